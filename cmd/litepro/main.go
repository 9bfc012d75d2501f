// Command litepro types formatted exam content into a running HWP word
// processor, from typing scripts or through a local HTTP API.
package main

func main() {
	Execute()
}
