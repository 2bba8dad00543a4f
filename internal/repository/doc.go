// Package repository defines the data access interfaces for annals.
//
// This package provides the repository abstraction layer for persisting and
// retrieving historical entries. Implementations live in subpackages, one per
// relational backend:
//
//   - sqlite: pure-Go SQLite (modernc.org/sqlite) in WAL mode, the default
//   - postgres: PostgreSQL through the pgx stdlib driver
//   - mysql: MySQL through go-sql-driver/mysql
//
// # Semantics
//
// Every implementation assigns ids on create, never reuses an id after delete,
// lists entries in ascending id order, and signals domain.NotFound for absent
// ids. Storage faults are reported with the domain.StorageError code.
//
// # Schema
//
// Schemas are owned by the migrations package and applied with goose before a
// repository is handed to the service layer.
package repository
