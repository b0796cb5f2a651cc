package godotbridge

// Native call error codes as reported in GDExtensionCallError.error.
const (
	CallOK                    int32 = 0
	CallErrorInvalidMethod    int32 = 1
	CallErrorInvalidArgument  int32 = 2
	CallErrorTooManyArguments int32 = 3
	CallErrorTooFewArguments  int32 = 4
	CallErrorInstanceIsNull   int32 = 5
	CallErrorMethodNotConst   int32 = 6
)

// CallErrorKind is the bridge's closed taxonomy of call failures.
type CallErrorKind uint8

const (
	CallErrorOK CallErrorKind = iota
	CallErrorKindInvalidMethod
	CallErrorKindInvalidArgument
	CallErrorKindTooFewArguments
	CallErrorKindTooManyArguments
	CallErrorKindInstanceIsNull
	CallErrorKindMethodNotConst
	// CallErrorKindUnknown covers codes added by engines newer than this bridge.
	CallErrorKindUnknown
)

func (k CallErrorKind) String() string {
	switch k {
	case CallErrorOK:
		return "ok"
	case CallErrorKindInvalidMethod:
		return "invalid method"
	case CallErrorKindInvalidArgument:
		return "invalid argument"
	case CallErrorKindTooFewArguments:
		return "too few arguments"
	case CallErrorKindTooManyArguments:
		return "too many arguments"
	case CallErrorKindInstanceIsNull:
		return "instance is null"
	case CallErrorKindMethodNotConst:
		return "method not const"
	default:
		return "unknown"
	}
}

// CallErrorKindFromCode maps a native call error code. It never fails:
// unrecognized codes map to CallErrorKindUnknown.
func CallErrorKindFromCode(code int32) CallErrorKind {
	switch code {
	case CallOK:
		return CallErrorOK
	case CallErrorInvalidMethod:
		return CallErrorKindInvalidMethod
	case CallErrorInvalidArgument:
		return CallErrorKindInvalidArgument
	case CallErrorTooManyArguments:
		return CallErrorKindTooManyArguments
	case CallErrorTooFewArguments:
		return CallErrorKindTooFewArguments
	case CallErrorInstanceIsNull:
		return CallErrorKindInstanceIsNull
	case CallErrorMethodNotConst:
		return CallErrorKindMethodNotConst
	default:
		return CallErrorKindUnknown
	}
}

// CallResult is the raw outcome of a native call.
type CallResult struct {
	Code     int32
	Argument int32
	Expected int32
}

// Kind maps the raw code into the closed taxonomy.
func (r CallResult) Kind() CallErrorKind {
	return CallErrorKindFromCode(r.Code)
}

// OK reports whether the call succeeded.
func (r CallResult) OK() bool {
	return r.Code == CallOK
}
