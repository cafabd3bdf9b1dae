package app

// Name is the binary and log service name.
const Name = "udpreceiver"
