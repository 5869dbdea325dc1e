// Package licenseregistry contains the Marlowe license registry: the
// reusable license offers a content owner attaches to their works.
//
// A license's creator is copied from the content owner at creation time
// and deliberately does not follow later ownership transfers; terms stay
// mutable only by that stored creator.
package licenseregistry
