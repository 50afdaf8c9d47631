// Command arenactl exercises the heapkit allocators: it replays the reference
// allocation scenarios with a dump after every step and runs randomized
// stress checks.
package main

func main() {
	execute()
}
