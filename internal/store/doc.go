// Package store is the persistence layer of go-list-keeper.
//
// The server side talks to PostgreSQL through database/sql with the pgx
// driver. Queries are built with squirrel and the schema is applied by the
// goose migrations embedded in the migrations package. Uploaded files go to
// a local directory served under a public URL.
//
// The client side keeps a small SQLite cache of API responses.
package store
