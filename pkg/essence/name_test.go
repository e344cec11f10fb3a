package essence

import "testing"

func TestNameEqualByKind(t *testing.T) {
	if !UserName("x").Equal(UserName("x")) {
		t.Error("expected equal user names to compare equal")
	}
	if UserName("x").Equal(UserName("y")) {
		t.Error("expected different user names to compare unequal")
	}
	if !MachineName(3).Equal(MachineName(3)) {
		t.Error("expected equal machine names to compare equal")
	}
	if UserName("x").Equal(MachineName(1)) {
		t.Error("expected a user name and a machine name to never compare equal")
	}
}

func TestRepresentedNameRoundTripsWithoutStringParsing(t *testing.T) {
	source := UserName("matrixVar")
	suffix := []Literal{IntLiteral(1), IntLiteral(2)}
	rn := RepresentedName(source, "matrix_to_atom", suffix)

	if !rn.IsRepresented() {
		t.Fatal("expected IsRepresented to be true")
	}
	gotSource, gotRepr, gotSuffix, ok := rn.Represented()
	if !ok {
		t.Fatal("expected Represented to report ok")
	}
	if !gotSource.Equal(source) {
		t.Errorf("expected source %q, got %q", source.String(), gotSource.String())
	}
	if gotRepr != "matrix_to_atom" {
		t.Errorf("expected repr name matrix_to_atom, got %q", gotRepr)
	}
	if len(gotSuffix) != 2 || gotSuffix[0].Int != 1 || gotSuffix[1].Int != 2 {
		t.Errorf("expected suffix [1,2], got %v", gotSuffix)
	}
}

func TestNameRepresentedEquality(t *testing.T) {
	source := UserName("v")
	a := RepresentedName(source, "matrix_to_atom", []Literal{IntLiteral(1)})
	b := RepresentedName(source, "matrix_to_atom", []Literal{IntLiteral(1)})
	c := RepresentedName(source, "matrix_to_atom", []Literal{IntLiteral(2)})
	if !a.Equal(b) {
		t.Error("expected represented names with identical source/repr/suffix to be equal")
	}
	if a.Equal(c) {
		t.Error("expected represented names differing only by suffix to be unequal")
	}
}

func TestNameStringRendering(t *testing.T) {
	if got, want := UserName("x").String(), "x"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got, want := MachineName(7).String(), "__7"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
