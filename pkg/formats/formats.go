// Package formats provides binary containers for generated terrain data.
//
// All containers are little-endian and begin with a four-byte magic followed
// by a [minor, major] version pair.
package formats
