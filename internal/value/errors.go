package value

// ErrorKind classifies Error values. It never affects equality or printing.
type ErrorKind int

const (
	UserError ErrorKind = iota
	UnboundSymbol
	TypeMismatch
	ArityMismatch
	EmptyArgument
	DivisionByZero
	MalformedNumber
	MalformedString
	MalformedFormals
	UnknownFunction
	LoadFailure
	RecursionLimit
	StoreFailure
)

func (k ErrorKind) String() string {
	switch k {
	case UserError:
		return "UserError"
	case UnboundSymbol:
		return "UnboundSymbol"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case EmptyArgument:
		return "EmptyArgument"
	case DivisionByZero:
		return "DivisionByZero"
	case MalformedNumber:
		return "MalformedNumber"
	case MalformedString:
		return "MalformedString"
	case MalformedFormals:
		return "MalformedFormals"
	case UnknownFunction:
		return "UnknownFunction"
	case LoadFailure:
		return "LoadFailure"
	case RecursionLimit:
		return "RecursionLimit"
	case StoreFailure:
		return "StoreFailure"
	}
	return "Unknown"
}
