// Package contentregistry contains the Marlowe content registry: the
// ledger of registered works, their metadata, and current ownership.
//
// The module keeps domain/application logic decoupled from runtime and
// platform concerns through ports and adapter composition.
package contentregistry
