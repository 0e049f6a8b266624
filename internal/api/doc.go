// Package api handles incoming HTTP requests for the user and product
// resources. Handlers decode and check request shape, call the services, and
// translate domain and storage errors into status codes and safe messages.
package api
