// Package main is the entry point for the jirasoap command, a terminal client
// for the JIRA SOAP service.
package main

func main() {
	Execute()
}
