package modux

// Version is the current release of the modux module.
const Version = "0.1.0"
