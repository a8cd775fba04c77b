package app

// Name is the tool identity rendered into script headers.
const Name = "provreplay"

// Version is stamped into the header attribution line.
const Version = "0.1.0"
