// Command valoutool inspects and balances Valouniversaire tuning catalogs.
package main

import "github.com/cory-johannsen/valouniversaire/cmd/valoutool/root"

func main() {
	root.Execute()
}
