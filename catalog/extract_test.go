package catalog

import (
	"testing"
)

func TestExtractCases_Flat(t *testing.T) {
	src := `
const { add, subtract } = require('./math');

test('adds', () => {
  expect(add(1, 2)).toBe(3);
});

test('subtracts', () => {
  expect(subtract(3, 2)).toBe(1);
});
`
	cases := ExtractCases(src)
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].Name != "adds" || cases[1].Name != "subtracts" {
		t.Errorf("unexpected names: %q, %q", cases[0].Name, cases[1].Name)
	}
	if len(cases[0].Containers) != 0 {
		t.Errorf("expected no containers, got %v", cases[0].Containers)
	}
	if cases[0].Line != 4 {
		t.Errorf("expected line 4 for first case, got %d", cases[0].Line)
	}
}

func TestExtractCases_Nested(t *testing.T) {
	src := `
describe('outer', () => {
  describe('inner', () => {
    it('does X', () => {
      expect(true).toBe(true);
    });
  });

  it('does Y', () => {});
});
`
	cases := ExtractCases(src)
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}

	if got := cases[0].ComposedName(); got != "outer > inner > does X" {
		t.Errorf("composed name = %q", got)
	}
	if got := cases[0].FullName(); got != "outer inner does X" {
		t.Errorf("full name = %q", got)
	}
	if got := cases[1].ComposedName(); got != "outer > does Y" {
		t.Errorf("composed name = %q", got)
	}
}

func TestExtractCases_LookalikesInStrings(t *testing.T) {
	src := `
it('mentions it("fake") in a string', () => {
  const s = "describe('not a block', () => {";
  const tpl = ` + "`test('also not real')`" + `;
});
`
	cases := ExtractCases(src)
	if len(cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(cases))
	}
	if cases[0].Name != `mentions it("fake") in a string` {
		t.Errorf("unexpected name %q", cases[0].Name)
	}
}

func TestExtractCases_Comments(t *testing.T) {
	src := `
// it('commented out', () => {});
/*
test('also commented', () => {});
*/
it('real', () => {});
`
	cases := ExtractCases(src)
	if len(cases) != 1 || cases[0].Name != "real" {
		t.Fatalf("expected only the real case, got %+v", cases)
	}
}

func TestExtractCases_MultiLineDeclaration(t *testing.T) {
	src := `
it(
  'spans lines',
  () => {}
);

describe(
  'group',
  () => {
    test('inside', () => {});
  }
);
`
	cases := ExtractCases(src)
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if cases[0].Name != "spans lines" {
		t.Errorf("unexpected name %q", cases[0].Name)
	}
	if got := cases[1].ComposedName(); got != "group > inside" {
		t.Errorf("composed name = %q", got)
	}
}

func TestExtractCases_Modifiers(t *testing.T) {
	src := `
describe.only('focused', () => {
  it.skip('skipped but named', () => {});
  test.todo('pending');
});
it.each([1, 2])('computed %d', n => {});
`
	cases := ExtractCases(src)
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases (each is excluded), got %d", len(cases))
	}
	if got := cases[0].ComposedName(); got != "focused > skipped but named" {
		t.Errorf("composed name = %q", got)
	}
	if got := cases[1].ComposedName(); got != "focused > pending" {
		t.Errorf("composed name = %q", got)
	}
}

func TestExtractCases_DynamicNameIgnored(t *testing.T) {
	src := `
const name = 'dynamic';
describe(name, () => {
  it('leaf under unnamed container', () => {});
});
`
	cases := ExtractCases(src)
	if len(cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(cases))
	}
	// The container name was not a literal, so the case has no chain.
	if len(cases[0].Containers) != 0 {
		t.Errorf("expected no containers, got %v", cases[0].Containers)
	}
}

func TestExtractCases_ContainerClosing(t *testing.T) {
	src := `
describe('first', () => {
  it('a', () => {});
});

describe('second', () => {
  it('b', () => {});
});
`
	cases := ExtractCases(src)
	if len(cases) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(cases))
	}
	if got := cases[0].ComposedName(); got != "first > a" {
		t.Errorf("composed name = %q", got)
	}
	if got := cases[1].ComposedName(); got != "second > b" {
		t.Errorf("composed name = %q", got)
	}
}

func TestExtractCases_EscapedQuotes(t *testing.T) {
	src := `it('it\'s escaped', () => {});`
	cases := ExtractCases(src)
	if len(cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(cases))
	}
	if cases[0].Name != "it's escaped" {
		t.Errorf("unexpected name %q", cases[0].Name)
	}
}

func TestExtractCases_CountMatchesLeafDeclarations(t *testing.T) {
	src := `
describe('d1', () => {
  describe('d2', () => {
    it('one', () => {});
    it('two', () => {});
  });
  it('three', () => {});
});
it('four', () => {});
`
	cases := ExtractCases(src)
	if len(cases) != 4 {
		t.Fatalf("expected 4 cases, got %d", len(cases))
	}
	for i, c := range cases {
		if c.Index != i {
			t.Errorf("case %d has index %d", i, c.Index)
		}
	}
}
