// Package kernel contains shared value objects used across the domain
// model. It currently provides the UUID identity type that all aggregates
// and external references (orders, dishes, users) use for identification.
package kernel
