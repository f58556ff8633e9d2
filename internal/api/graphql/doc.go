// Package graphql exposes the task service through a GraphQL schema served
// with graph-gophers/graphql-go. Resolvers delegate to service.TaskService and
// translate its errors into client-safe GraphQL errors.
package graphql
