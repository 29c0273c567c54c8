package errs

// Category errors. Specific sentinels in domain and usecase packages are
// marked with one of these so the handler layer can map them to a status.
var (
	ErrValidation        = New("validation failed")
	ErrNotFound          = New("not found")
	ErrForbidden         = New("forbidden")
	ErrToken             = New("action token rejected")
	ErrConflict          = New("conflict")
	ErrAlreadyCanceled   = New("already canceled")
	ErrUnavailable       = New("collaborator unavailable")
	ErrDatabaseOperation = New("database operation failed")
)

// Token sub-kinds. Each also matches ErrToken.
var (
	ErrTokenExpired = Mark(New("action token expired"), ErrToken)
	ErrTokenPurpose = Mark(New("action token used for the wrong purpose"), ErrToken)
	ErrTokenUsed    = Mark(New("action token already consumed"), ErrToken)
)
