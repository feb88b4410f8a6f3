/*
 * javadec - a class file decoder and structural validator
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

func main() {
	Execute()
}
