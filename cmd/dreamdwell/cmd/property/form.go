// Package property provides the add, edit and delete commands.
package property

import (
	"context"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dreamdwell/dreamdwell"
	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/pkg/draft"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

var usage = map[draft.Field]string{
	draft.FieldName:        "Listing name",
	draft.FieldPrice:       "Price",
	draft.FieldAddress:     "Street address",
	draft.FieldBaths:       "Number of bathrooms",
	draft.FieldBeds:        "Number of bedrooms",
	draft.FieldArea:        "Area code",
	draft.FieldOwner:       "Owner name",
	draft.FieldDescription: "Free text description",
}

// form holds the draft flags shared by add and edit.
type form struct {
	values     map[draft.Field]*string
	images     []string
	dropImages []int
}

func addFormFlags(cmd *cobra.Command, editing bool) *form {
	f := &form{values: make(map[draft.Field]*string, len(draft.Fields))}
	for _, field := range draft.Fields {
		f.values[field] = cmd.Flags().String(string(field), "", usage[field])
	}
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "Image file or URL to append (repeatable)")
	if editing {
		cmd.Flags().IntSliceVar(&f.dropImages, "drop-image", nil, "Position of an existing image to remove (repeatable)")
	}
	return f
}

// apply copies the flags that were set into the draft. Images are dropped
// before new ones are appended; positions refer to the loaded images.
func (f *form) apply(ctx context.Context, cmd *cobra.Command, app appcontext.Interface, client dreamdwell.Client) error {
	for _, field := range draft.Fields {
		if !cmd.Flags().Changed(string(field)) {
			continue
		}
		if err := client.SetField(field, *f.values[field]); err != nil {
			return err
		}
	}

	drop := slices.Clone(f.dropImages)
	slices.Sort(drop)
	drop = slices.Compact(drop)
	for i := len(drop) - 1; i >= 0; i-- {
		if err := client.RemoveImageAt(drop[i]); err != nil {
			return err
		}
	}

	if len(f.images) > 0 {
		refs, err := app.Images().Load(ctx, f.images...)
		if err != nil {
			return err
		}
		if err := client.AddImages(refs...); err != nil {
			return err
		}
	}
	return nil
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.NewValidationError("index", arg, "must be a whole number")
	}
	return index, nil
}
