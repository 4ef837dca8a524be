// Command mockauth drives the mock session engine from a terminal.
//
//	mockauth login -u alice -p secret1 --redis-addr localhost:6379
//	mockauth logout --redis-addr localhost:6379
//	mockauth serve --addr :8080 --embedded-redis
//	mockauth loadtest --workers 64 --ops 100000
//
// Without a Redis address the active session lives in process memory, so login and
// logout only share it inside serve or loadtest.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
