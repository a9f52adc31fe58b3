// Package session provides the in-memory session registry.
//
// A session is one board being played on one screen: its own engine, the board
// configuration it was created from, and access timestamps. Sessions live only
// in memory; a restart starts from an empty registry.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs generated from crypto/rand. Lookups are
// case-insensitive and generated IDs never collide with a live session.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", boardConfig)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Cleanup:
//
// CleanupExpiredSessions removes sessions that have not been touched within a
// retention window; the server runs it hourly.
package session
