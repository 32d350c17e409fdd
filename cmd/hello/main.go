package main

import "github.com/theapemachine/qcircuit/internal/demo"

func main() { demo.Main("hello", demo.Hello) }
