// Package services contains the application services behind the REPL
// commands: the college catalogue, admission applications and reviews.
// Calls that need the viewer's credential go through an Authorizer so that
// a rejected credential ends the session.
package services
