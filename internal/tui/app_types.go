package tui

type focusArea int

const (
	focusClips focusArea = iota
	focusCategories
	focusSearch
)

type modalKind int

const (
	modalNone modalKind = iota
	modalClipForm
	modalCategoryForm
	modalConfirm
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type toastKind string

const (
	toastSuccess toastKind = "success"
	toastError   toastKind = "error"
)

type toast struct {
	text string
	kind toastKind
}

// toastDoneMsg hides the toast only while seq is still the latest one shown.
type toastDoneMsg struct{ seq int }

type copyDoneMsg struct {
	title string
	err   error
}

type saveErrMsg struct{ err error }

type confirmTarget int

const (
	confirmDeleteClip confirmTarget = iota
	confirmDeleteCategory
)

type pendingConfirm struct {
	target confirmTarget
	id     string
	title  string
	body   string
}
