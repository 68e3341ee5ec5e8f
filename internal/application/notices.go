package application

// Notices shown to the user after an operation.
const (
	NoticeListCreated  = "The list has been created."
	NoticeListUpdated  = "The list has been updated."
	NoticeListDeleted  = "The list has been deleted."
	NoticeTodoAdded    = "Todo successfully added."
	NoticeTodoDeleted  = "The todo item has been deleted."
	NoticeTodoUpdated  = "The todo item has been updated."
	NoticeAllCompleted = "The todo items have all been completed."
	NoticeListNotFound = "The specified list was not found."
	NoticeTodoNotFound = "The specified todo was not found."
)
