package main

// version is set by build flags.
var version = "dev"
