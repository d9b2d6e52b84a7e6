package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/mcreations/storefront/app/services"
	gql "github.com/mcreations/storefront/pkg/graphql"
	"github.com/mcreations/storefront/pkg/response"
)

// GraphQLController serves the read-only catalogue query endpoint.
type GraphQLController struct {
	handler http.HandlerFunc
}

func NewGraphQLController(catalog *services.CatalogService) (*GraphQLController, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"title":       &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.String},
			"image_url":   &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
		},
	})

	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.Int},
			"name": &graphql.Field{Type: graphql.String},
			"slug": &graphql.Field{Type: graphql.String},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					search, _ := p.Args["search"].(string)
					products, err := catalog.List(search)
					if err != nil {
						return nil, err
					}
					return services.Views(products), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := catalog.Find(uint(id))
					if err != nil {
						return nil, nil //nolint:nilerr // absent product resolves to null
					}
					return services.View(product), nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					categories, err := catalog.Categories()
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(categories))
					for i, c := range categories {
						out[i] = map[string]interface{}{
							"id":   int(c.ID),
							"name": c.Name,
							"slug": c.Slug,
						}
					}
					return out, nil
				},
			},
		},
	})

	schema, err := gql.NewSchema(query)
	if err != nil {
		return nil, err
	}

	return &GraphQLController{handler: gql.Handler(schema)}, nil
}

// Serve executes one GraphQL request.
func (c *GraphQLController) Serve(w http.ResponseWriter, r *http.Request) {
	if c == nil || c.handler == nil {
		response.Error(w, http.StatusServiceUnavailable, "GraphQL unavailable")
		return
	}
	c.handler(w, r)
}
