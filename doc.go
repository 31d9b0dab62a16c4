// Package nsduck manages the lifecycle of a connection to an embedded
// analytical database and runs queries on it.
//
// A Session owns one database file and at most one connection. Its
// operations must happen in order:
//
//	unopened --Open--> opened --Connect--> connected --Query*--> connected
//	connected --Disconnect--> opened
//	opened|connected --Close--> closed
//
// Create combines Open and Connect and never returns a half-initialized
// Session. Operations attempted in the wrong state fail with a typed error
// without reaching the engine; engine failures are returned verbatim.
// Operations on one Session are serialized; independent Sessions run in
// parallel.
//
//	db, err := nsduck.Create(ctx, "analytics.db", nil)
//	if err != nil {
//		return err
//	}
//	defer db.Close(ctx)
//
//	res, err := db.Query(ctx, "SELECT 1 + 1 AS value")
//
// The package never logs or prints.
package nsduck
