package main

import "github.com/ttlint/ttlint/cmd/ttlint"

func main() { ttlint.Execute() }
