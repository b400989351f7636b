// Package errs defines the error types returned to API clients.
//
// Every failed request is answered with an HTTPError serialized as JSON,
// so clients always see the same shape:
//
//	{ "statusCode": 404, "message": "Article with id 7 does not exist", "code": "NOT_FOUND" }
package errs
