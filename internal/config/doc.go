// Package config holds the xorcrack run configuration, its defaults and
// validation, and the optional .xorcrack YAML file that supplies defaults
// for flags not given on the command line.
package config
