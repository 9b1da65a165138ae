package adminapi

// InitRouter registers every admin API route on the webserver.
func InitRouter() {
	registerProductRoutes()
	registerTableRoutes()
	registerOrderRoutes()
	registerSystemRoutes()
}
