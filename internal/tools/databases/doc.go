// Package databases provides the database tools: listing and lookup,
// provisioning with pre-flight validation, registration, update and
// deregistration.
package databases
