// Package smartprop embeds the smartprop property search engine in a Go
// program, backed by Redis or Valkey.
//
// Free-text queries are turned into a structured filter (price and room
// ranges, property type, location, advisory keywords) and every stored
// listing is ranked against it. Listings that violate a range or exact
// predicate are excluded; keywords only reorder the rest.
//
//	client, _ := smartprop.New(ctx, smartprop.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	res, _ := client.Search(ctx, "3 bedroom apartment under 500k in austin")
//	for _, p := range res.Properties {
//	    fmt.Println(p["id"], p["price"])
//	}
//
// The engine is also usable without a store:
//
//	f, _ := smartprop.GenerateTerms("condo with pool under 400000")
//	ranked := smartprop.Rank(listings, f)
package smartprop
