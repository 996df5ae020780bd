// Package services contains the business logic, free of transport and
// storage concerns. Services depend only on the port interfaces and are
// wired with concrete adapters at startup.
package services
