package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// retrieval
	RouteDownload = "/d/:key"
	RouteTicket   = "/@ticket"

	// recipient, scoped by email
	RouteHome       = "/:email"
	RouteBrowse     = "/:email/b"
	RouteSignOut    = "/:email/o"
	RouteIssueCode  = "/:email/i"
	RouteVerifyCode = "/:email/v"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
