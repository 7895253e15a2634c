package console

// Menu commands are closed enums dispatched through exhaustive switches;
// there is no string-keyed handler lookup anywhere.

type mainCmd int

const (
	mainLogin mainCmd = iota + 1
	mainRegister
	mainExit
)

type adminCmd int

const (
	adminAddCustomer adminCmd = iota + 1
	adminViewAll
	adminUpdateUsage
	adminDeleteCustomer
	adminBulkLoad
	adminAnalytics
	adminExport
	adminReport
	adminCreateAdmin
	adminLogout
)

type clientCmd int

const (
	clientViewBill clientCmd = iota + 1
	clientPayBill
	clientLogout
)
