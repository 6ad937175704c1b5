// Package graph defines the GraphQL schema and the resolver table mapping
// each named operation to its authorization check, data access, and
// response shape.
package graph

import (
	"fmt"

	"thoughts-backend/internal/middleware"
	"thoughts-backend/internal/models"
	"thoughts-backend/internal/services"

	"github.com/graphql-go/graphql"
)

// Auth is the shape returned by addUser and login: a fresh credential plus
// the affected user.
type Auth struct {
	Token string
	User  *models.User
}

// New builds the executable schema over the given services.
func New(users *services.UserService, thoughts *services.ThoughtService) (graphql.Schema, error) {
	reactionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Reaction",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Reaction).ID, nil
				},
			},
			"reactionBody": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Reaction).ReactionBody, nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Reaction).Username, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return models.FormatDate(p.Source.(models.Reaction).CreatedAt), nil
				},
			},
		},
	})

	thoughtType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Thought",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Thought).ID, nil
				},
			},
			"thoughtText": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Thought).ThoughtText, nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Thought).Username, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return models.FormatDate(p.Source.(*models.Thought).CreatedAt), nil
				},
			},
			"reactionCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Thought).ReactionCount(), nil
				},
			},
			"reactions": &graphql.Field{
				Type: graphql.NewList(reactionType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Thought).Reactions, nil
				},
			},
		},
	})

	// User has no password field at all; the hash is unreachable through
	// any query regardless of requester identity.
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).ID, nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).Username, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).Email, nil
				},
			},
			"friendCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).FriendCount(), nil
				},
			},
			"thoughts": &graphql.Field{
				Type: graphql.NewList(thoughtType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.User).Thoughts, nil
				},
			},
		},
	})
	// Self-referential field, added after construction.
	userType.AddFieldConfig("friends", &graphql.Field{
		Type: graphql.NewList(userType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(*models.User).Friends, nil
		},
	})

	authType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Auth",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(Auth).Token, nil
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(Auth).User, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFrom(p.Context)
					if identity == nil {
						return nil, models.ErrNotLoggedIn()
					}
					user, err := users.Me(p.Context, identity.ID)
					if err != nil || user == nil {
						return nil, err
					}
					return user, nil
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return users.List(p.Context)
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := users.GetByUsername(p.Context, p.Args["username"].(string))
					if err != nil || user == nil {
						return nil, err
					}
					return user, nil
				},
			},
			"thoughts": &graphql.Field{
				Type: graphql.NewList(thoughtType),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					username, _ := p.Args["username"].(string)
					return thoughts.List(p.Context, username)
				},
			},
			"thought": &graphql.Field{
				Type: thoughtType,
				Args: graphql.FieldConfigArgument{
					"_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					thought, err := thoughts.Get(p.Context, fmt.Sprintf("%v", p.Args["_id"]))
					if err != nil || thought == nil {
						return nil, err
					}
					return thought, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addUser": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, credential, err := users.Register(p.Context,
						p.Args["username"].(string),
						p.Args["email"].(string),
						p.Args["password"].(string),
					)
					if err != nil {
						return nil, err
					}
					return Auth{Token: credential, User: user}, nil
				},
			},
			"login": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, credential, err := users.Login(p.Context,
						p.Args["email"].(string),
						p.Args["password"].(string),
					)
					if err != nil {
						return nil, err
					}
					return Auth{Token: credential, User: user}, nil
				},
			},
			"addThought": &graphql.Field{
				Type: thoughtType,
				Args: graphql.FieldConfigArgument{
					"thoughtText": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFrom(p.Context)
					if identity == nil {
						return nil, models.ErrLoginRequired()
					}
					return thoughts.Add(p.Context, identity.ID, identity.Username, p.Args["thoughtText"].(string))
				},
			},
			"addReaction": &graphql.Field{
				Type: thoughtType,
				Args: graphql.FieldConfigArgument{
					"thoughtId":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"reactionBody": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFrom(p.Context)
					if identity == nil {
						return nil, models.ErrLoginRequired()
					}
					thought, err := thoughts.AddReaction(p.Context,
						identity.Username,
						fmt.Sprintf("%v", p.Args["thoughtId"]),
						p.Args["reactionBody"].(string),
					)
					if err != nil || thought == nil {
						return nil, err
					}
					return thought, nil
				},
			},
			"addFriend": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"friendId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity := middleware.IdentityFrom(p.Context)
					if identity == nil {
						return nil, models.ErrLoginRequired()
					}
					user, err := users.AddFriend(p.Context, identity.ID, fmt.Sprintf("%v", p.Args["friendId"]))
					if err != nil || user == nil {
						return nil, err
					}
					return user, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
