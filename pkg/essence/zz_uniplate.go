// Code generated by scripts/gen_uniplate from the Uniplate-implementing
// types in this package. DO NOT EDIT.

package essence

// exprTypeName returns the generated-registry name of e's concrete type,
// a stable variant name obtained without reflection.
func exprTypeName(e Expression) string {
	switch e.(type) {
	case *NaryArith:
		return "NaryArith"
	case *UnaryArith:
		return "UnaryArith"
	case *BinaryArith:
		return "BinaryArith"
	case *AtomExpr:
		return "AtomExpr"
	case *NaryLogic:
		return "NaryLogic"
	case *Not:
		return "Not"
	case *Compare:
		return "Compare"
	case *SetLit:
		return "SetLit"
	case *MatrixLit:
		return "MatrixLit"
	case *TupleLit:
		return "TupleLit"
	case *RecordLit:
		return "RecordLit"
	case *Index:
		return "Index"
	case *Slice:
		return "Slice"
	case *Bubble:
		return "Bubble"
	case *Comprehension:
		return "Comprehension"
	case *SafeArith:
		return "SafeArith"
	case *SafeIndex:
		return "SafeIndex"
	case *SafeSlice:
		return "SafeSlice"
	case *AuxDeclaration:
		return "AuxDeclaration"
	case *FlatLinear:
		return "FlatLinear"
	case *FlatWeightedLinear:
		return "FlatWeightedLinear"
	case *FlatIneq:
		return "FlatIneq"
	case *MinionReify:
		return "MinionReify"
	case *MinionDivEqUndefZero:
		return "MinionDivEqUndefZero"
	case *SATInt:
		return "SATInt"
	case *CnfClause:
		return "CnfClause"
	default:
		return "unknown"
	}
}

// allExpressionTypeNames lists every generated variant name.
var allExpressionTypeNames = []string{
	"NaryArith", "UnaryArith", "BinaryArith", "AtomExpr",
	"NaryLogic", "Not", "Compare",
	"SetLit", "MatrixLit", "TupleLit", "RecordLit", "Index", "Slice", "Bubble",
	"Comprehension",
	"SafeArith", "SafeIndex", "SafeSlice", "AuxDeclaration",
	"FlatLinear", "FlatWeightedLinear", "FlatIneq", "MinionReify", "MinionDivEqUndefZero",
	"SATInt", "CnfClause",
}
