package form

import "fmt"

// ObjectField is a data field holding a keyed group of values.
// Properties live directly under the field's data path.
type ObjectField struct {
	Field
}

var _ Handle = (*ObjectField)(nil)

// AddProperty writes value under key inside the object. An empty key
// is rejected.
func (o *ObjectField) AddProperty(key string, value any) error {
	if key == "" {
		return fmt.Errorf("form: add property on %s: empty key", o.address)
	}
	o.form.SetValuesIn(o.path.Append(key).String(), value)
	return nil
}

// RemoveProperty deletes the value under key inside the object.
func (o *ObjectField) RemoveProperty(key string) {
	if key == "" {
		return
	}
	o.form.DeleteValuesIn(o.path.Append(key).String())
}

// ExistProperty reports whether the object holds a value under key.
func (o *ObjectField) ExistProperty(key string) bool {
	if key == "" {
		return false
	}
	return o.form.ExistValuesIn(o.path.Append(key).String())
}
