// Package process terminates the headless browser started by the PDF printer.
package process
