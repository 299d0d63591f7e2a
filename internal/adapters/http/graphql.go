package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/patitas-quito/patitas/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services. Field names
// follow the REST JSON names so the default resolver reads the json tags.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	locationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Ubicacion",
		Fields: graphql.Fields{
			"type":        &graphql.Field{Type: graphql.String},
			"coordinates": &graphql.Field{Type: graphql.NewList(graphql.Float)},
		},
	})

	animalType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Animal",
		Fields: graphql.Fields{
			"_id":           &graphql.Field{Type: graphql.String},
			"tipoAnimal":    &graphql.Field{Type: graphql.String},
			"raza":          &graphql.Field{Type: graphql.String},
			"ubicacion":     &graphql.Field{Type: locationType},
			"edad":          &graphql.Field{Type: graphql.Int},
			"sexo":          &graphql.Field{Type: graphql.String},
			"fechaRegistro": &graphql.Field{Type: graphql.DateTime},
		},
	})

	boundsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Limites",
		Fields: graphql.Fields{
			"latMin": &graphql.Field{Type: graphql.Float},
			"latMax": &graphql.Field{Type: graphql.Float},
			"lonMin": &graphql.Field{Type: graphql.Float},
			"lonMax": &graphql.Field{Type: graphql.Float},
		},
	})

	sectorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Sector",
		Fields: graphql.Fields{
			"nombre":  &graphql.Field{Type: graphql.String},
			"limites": &graphql.Field{Type: boundsType},
		},
	})

	countType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Conteo",
		Fields: graphql.Fields{
			"sector": &graphql.Field{Type: graphql.String},
			"raza":   &graphql.Field{Type: graphql.String},
			"conteo": &graphql.Field{Type: graphql.Int},
		},
	})

	classifyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Clasificacion",
		Fields: graphql.Fields{
			"lon":    &graphql.Field{Type: graphql.Float},
			"lat":    &graphql.Field{Type: graphql.Float},
			"sector": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"animales": &graphql.Field{
				Type:        graphql.NewList(animalType),
				Description: "List animals, optionally of one breed",
				Args: graphql.FieldConfigArgument{
					"raza": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if breed, ok := p.Args["raza"].(string); ok && breed != "" {
						return deps.Animals.ListByBreed(p.Context, breed)
					}
					return deps.Animals.List(p.Context)
				},
			},
			"animal": &graphql.Field{
				Type:        animalType,
				Description: "Get an animal by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id := p.Args["id"].(string)
					if !validID(id) {
						return nil, errors.New(msgInvalidID)
					}
					animal, err := deps.Animals.GetByID(p.Context, id)
					if errors.Is(err, domain.ErrNotFound) {
						return nil, nil
					}
					return animal, err
				},
			},
			"sectores": &graphql.Field{
				Type:        graphql.NewList(sectorType),
				Description: "Sector table in classification order",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return deps.Analysis.Sectors(), nil
				},
			},
			"conteo": &graphql.Field{
				Type:        countType,
				Description: "Count animals of a breed inside a sector",
				Args: graphql.FieldConfigArgument{
					"sector": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"raza":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					sector := p.Args["sector"].(string)
					breed := p.Args["raza"].(string)
					result, err := deps.Analysis.CountBySectorAndBreed(p.Context, sector, breed)
					if errors.Is(err, domain.ErrInvalidSector) {
						return nil, errors.New(msgInvalidSector)
					}
					if err != nil {
						LoggerFromCtx(p.Context).Error("graphql sector count failed", "error", err)
						return nil, errors.New(msgInternal)
					}
					return result, nil
				},
			},
			"clasificar": &graphql.Field{
				Type:        classifyType,
				Description: "Sector containing a coordinate",
				Args: graphql.FieldConfigArgument{
					"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					lon := p.Args["lon"].(float64)
					lat := p.Args["lat"].(float64)
					return ClassifyResponse{
						Lon:    lon,
						Lat:    lat,
						Sector: deps.Analysis.Classify(domain.GeoPoint{Lon: lon, Lat: lat}),
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string         `json:"query"`
		OperationName string         `json:"operationName"`
		Variables     map[string]any `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, msgInvalidBody)
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
