// Package pkgerror carries the error type that handlers turn into HTTP
// responses.
//
// An Error has a Type (server, business or validation) and a Code. The router
// writes Msg() as the "message" field and derives the status from the Code:
// an upload in a format we cannot read is CodeUnsupportedFormat (415), an
// undecodable workbook is CodeInvalidFormat (400), a body over the upload
// limit is CodeTooLarge (413) and a chart naming a column the stored table
// lacks is CodeNotFound (404). Server errors always reach the client as
// "Internal server error" and keep their cause for the logs only.
package pkgerror
