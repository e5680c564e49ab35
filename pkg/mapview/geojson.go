package mapview

import (
	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSONSurface records drawing calls as a GeoJSON feature collection.
// Styling follows the simplestyle property names.
type GeoJSONSurface struct {
	collection *geojson.FeatureCollection
}

func NewGeoJSONSurface() *GeoJSONSurface {
	return &GeoJSONSurface{collection: geojson.NewFeatureCollection()}
}

func (g *GeoJSONSurface) DrawPolyline(points []ctdf.GeoPoint, style PolylineStyle) {
	line := make(orb.LineString, 0, len(points))
	for _, point := range points {
		line = append(line, point.OrbPoint())
	}

	feature := geojson.NewFeature(line)
	feature.Properties["type"] = "route"
	feature.Properties["stroke"] = style.Colour
	feature.Properties["stroke-width"] = style.Weight
	feature.Properties["stroke-opacity"] = style.Opacity
	feature.Properties["stroke-style"] = style.Stroke

	g.collection.Append(feature)
}

func (g *GeoJSONSurface) DrawCallout(at ctdf.GeoPoint, title string, subtitle string, colour string) {
	feature := geojson.NewFeature(at.OrbPoint())
	feature.Properties["type"] = "callout"
	feature.Properties["title"] = title
	feature.Properties["subtitle"] = subtitle
	feature.Properties["marker-color"] = colour

	g.collection.Append(feature)
}

func (g *GeoJSONSurface) DrawMarker(at ctdf.GeoPoint, label string) {
	feature := geojson.NewFeature(at.OrbPoint())
	feature.Properties["type"] = "station"
	feature.Properties["title"] = label

	g.collection.Append(feature)
}

func (g *GeoJSONSurface) FitBounds(bounds ctdf.BoundingRegion) {
	g.collection.BBox = geojson.NewBBox(bounds.Orb())
}

func (g *GeoJSONSurface) FeatureCollection() *geojson.FeatureCollection {
	return g.collection
}

func (g *GeoJSONSurface) MarshalJSON() ([]byte, error) {
	return g.collection.MarshalJSON()
}
