// Package graphql exposes page content through a read-only GraphQL schema.
package graphql

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/digitalocean/contact-form/pkg/content"
	"github.com/digitalocean/contact-form/pkg/models"
)

// Request is a GraphQL query as posted by clients
type Request struct {
	Query         string         `json:"query" form:"query"`
	OperationName string         `json:"operationName" form:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Schema answers queries against a page registry
type Schema struct {
	schema graphql.Schema
}

// NewSchema builds the schema for reg
func NewSchema(reg *content.Registry) (*Schema, error) {
	fieldType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FormField",
		Fields: graphql.Fields{
			"name":         stringField(func(f models.FieldSpec) string { return f.Name }),
			"label":        stringField(func(f models.FieldSpec) string { return f.Label }),
			"fieldType":    stringField(func(f models.FieldSpec) string { return string(f.Kind) }),
			"defaultValue": stringField(func(f models.FieldSpec) string { return f.DefaultValue }),
			"helpText":     stringField(func(f models.FieldSpec) string { return f.HelpText }),
			"required": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(models.FieldSpec).Required, nil
				},
			},
			"choices": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(models.FieldSpec).Choices, nil
				},
			},
		},
	})

	formPageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FormPage",
		Fields: graphql.Fields{
			"id":           formString(func(p models.FormPage) string { return p.ID }),
			"title":        formString(func(p models.FormPage) string { return p.Title }),
			"slug":         formString(func(p models.FormPage) string { return p.Slug }),
			"url":          formString(func(p models.FormPage) string { return content.URL(p.Slug) }),
			"intro":        formRichText(func(p models.FormPage) string { return p.Intro }),
			"thankYouText": formRichText(func(p models.FormPage) string { return p.ThankYouText }),
			"fromAddress":  formString(func(p models.FormPage) string { return p.Email.FromAddress }),
			"toAddress":    formString(func(p models.FormPage) string { return p.Email.ToAddress }),
			"subject":      formString(func(p models.FormPage) string { return p.Email.Subject }),
			"formFields": &graphql.Field{
				Type: graphql.NewList(fieldType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return []models.FieldSpec(p.Source.(models.FormPage).Fields), nil
				},
			},
		},
	})

	contentPageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ContentPage",
		Fields: graphql.Fields{
			"id":    contentString(func(p models.ContentPage) string { return p.ID }),
			"title": contentString(func(p models.ContentPage) string { return p.Title }),
			"slug":  contentString(func(p models.ContentPage) string { return p.Slug }),
			"url":   contentString(func(p models.ContentPage) string { return content.URL(p.Slug) }),
			"intro": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return richText(p.Source.(models.ContentPage).Intro)
				},
			},
			"contactForm": &graphql.Field{
				Type: formPageType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					slug := p.Source.(models.ContentPage).ContactForm
					if slug == "" {
						return nil, nil
					}
					if form, ok := reg.FormPage(slug); ok {
						return form, nil
					}
					return nil, nil
				},
			},
		},
	})

	formPageType.AddFieldConfig("usedOnPage", &graphql.Field{
		Type: graphql.NewList(contentPageType),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return reg.PagesUsingForm(p.Source.(models.FormPage).Slug), nil
		},
	})

	slugArgs := graphql.FieldConfigArgument{
		"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"pages": &graphql.Field{
				Type: graphql.NewList(contentPageType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return reg.ContentPages(), nil
				},
			},
			"page": &graphql.Field{
				Type: contentPageType,
				Args: slugArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if page, ok := reg.ContentPage(p.Args["slug"].(string)); ok {
						return page, nil
					}
					return nil, nil
				},
			},
			"formPages": &graphql.Field{
				Type: graphql.NewList(formPageType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return reg.FormPages(), nil
				},
			},
			"formPage": &graphql.Field{
				Type: formPageType,
				Args: slugArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if form, ok := reg.FormPage(p.Args["slug"].(string)); ok {
						return form, nil
					}
					return nil, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query})
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	return &Schema{schema: schema}, nil
}

// Do runs a query
func (s *Schema) Do(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

func stringField(get func(models.FieldSpec) string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return get(p.Source.(models.FieldSpec)), nil
		},
	}
}

func formString(get func(models.FormPage) string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return get(p.Source.(models.FormPage)), nil
		},
	}
}

func formRichText(get func(models.FormPage) string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return richText(get(p.Source.(models.FormPage)))
		},
	}
}

func contentString(get func(models.ContentPage) string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return get(p.Source.(models.ContentPage)), nil
		},
	}
}

func richText(src string) (any, error) {
	html, err := content.RenderRichText(src)
	if err != nil {
		return nil, err
	}
	return string(html), nil
}
