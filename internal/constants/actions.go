package constants

const (
	Create          = "CREATE"
	Update          = "UPDATE"
	Delete          = "DELETE"
	SubmitPayment   = "SUBMIT_PAYMENT"
	ApprovePayment  = "APPROVE_PAYMENT"
	RejectPayment   = "REJECT_PAYMENT"
	UploadDocument  = "UPLOAD_DOCUMENT"
	AddReference    = "ADD_REFERENCE"
	RemoveReference = "REMOVE_REFERENCE"
	Reconcile       = "RECONCILE"
	Login           = "LOGIN"
)
