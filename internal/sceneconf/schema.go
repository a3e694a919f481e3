package sceneconf

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Config file kinds, matching the renderer's two inputs.
const (
	KindObjects = "objects"
	KindCamera  = "camera"
)

// schemaSrc mirrors what the renderer actually reads: a camera table with
// projection parameters, and a materials table plus an object list (the
// renderer accepts either "objects" or the legacy "hitables" key).
const schemaSrc = `
#Vec3: [number, number, number]

#Camera: {
	camera: {
		focal_length:  number
		fov:           number
		center:        #Vec3
		look_at:       #Vec3
		up:            #Vec3
		defocus_angle: number
		...
	}
	...
}

#Material: {
	type: "lambertian" | "metal" | "dielectric"
	...
}

#Shape: {
	type:     string
	material: string
	...
}

#Objects: {
	materials: [string]: #Material
	objects?: [...#Shape]
	hitables?: [...#Shape]
	...
}
`

// Validate checks a decoded scene config document against the schema for its
// kind. The document must already be normalized to plain Go values.
func Validate(doc map[string]any, kind string) error {
	var defPath string
	switch kind {
	case KindCamera:
		defPath = "#Camera"
	case KindObjects:
		defPath = "#Objects"
	default:
		return fmt.Errorf("unknown config kind %q", kind)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSrc)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	val := ctx.Encode(doc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath(defPath)).Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s schema: %w", kind, err)
	}

	if kind == KindObjects {
		_, hasObjects := doc["objects"]
		_, hasHitables := doc["hitables"]
		if !hasObjects && !hasHitables {
			return fmt.Errorf("objects schema: missing object list (need \"objects\" or \"hitables\")")
		}
	}
	return nil
}
