package azdo

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// State codec: converts resources to and from the JSON tree persisted in the
// state file. The tree is self-describing: a key carrying a "::<TypeName>"
// suffix holds a nested resource of that type, a "::datetime" suffix holds an
// ISO-8601 timestamp, so a tree can be decoded without any external schema.
//
// This is deliberately a different schema from the remote API's payload shape:
// FromPayload handles the wire, the codec handles local state.

const (
	markerSeparator = "::"
	datetimeMarker  = "datetime"
)

// EncodeState serializes a resource into its JSON-safe state tree.
// DecodeState inverts it losslessly.
func EncodeState(resource Resource) (map[string]interface{}, error) {
	encoded := make(map[string]interface{})

	for name, value := range resource.StateFields() {
		key, converted, err := encodeValue(name, value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s field %s: %w", resource.ResourceKind(), name, err)
		}

		encoded[key] = converted
	}

	return encoded, nil
}

//nolint:cyclop // dispatch over every supported runtime shape
func encodeValue(key string, value interface{}) (string, interface{}, error) {
	if value == nil {
		return key, nil, nil
	}

	switch typed := value.(type) {
	case time.Time:
		return key + markerSeparator + datetimeMarker, typed.Format(time.RFC3339Nano), nil
	case *time.Time:
		if typed == nil {
			return key, nil, nil
		}

		return key + markerSeparator + datetimeMarker, typed.Format(time.RFC3339Nano), nil
	case Resource:
		// A typed nil (e.g. a nil *Member field) still satisfies Resource.
		if nilValue := reflect.ValueOf(typed); nilValue.Kind() == reflect.Pointer && nilValue.IsNil() {
			return key, nil, nil
		}

		nested, err := EncodeState(typed)
		if err != nil {
			return "", nil, err
		}

		return key + markerSeparator + string(typed.ResourceKind()), nested, nil
	case map[string]interface{}:
		converted := make(map[string]interface{}, len(typed))

		for innerKey, innerValue := range typed {
			encodedKey, encodedValue, err := encodeValue(innerKey, innerValue)
			if err != nil {
				return "", nil, err
			}

			converted[encodedKey] = encodedValue
		}

		return key, converted, nil
	case map[string]string:
		converted := make(map[string]interface{}, len(typed))
		for innerKey, innerValue := range typed {
			converted[innerKey] = innerValue
		}

		return key, converted, nil
	case string:
		return key, typed, nil
	}

	if reflect.TypeOf(value).Kind() == reflect.Slice {
		return encodeSlice(key, value)
	}

	return key, fmt.Sprint(value), nil
}

// encodeSlice encodes every element under the field's key. Elements must agree
// on their marker: a list is either all plain values, all timestamps, or all
// resources of one type.
func encodeSlice(key string, value interface{}) (string, interface{}, error) {
	slice := reflect.ValueOf(value)
	elements := make([]interface{}, 0, slice.Len())
	elementKey := key

	for i := range slice.Len() {
		encodedKey, encodedValue, err := encodeValue(key, slice.Index(i).Interface())
		if err != nil {
			return "", nil, err
		}

		if i == 0 {
			elementKey = encodedKey
		} else if encodedKey != elementKey {
			return "", nil, fmt.Errorf("mixed element types in list field %q", key)
		}

		elements = append(elements, encodedValue)
	}

	return elementKey, elements, nil
}

// DecodeState reconstructs a resource of the given kind from its state tree.
// Unknown kinds and unknown nested type markers are fatal decode errors.
func DecodeState(kind Kind, state map[string]interface{}) (Resource, error) {
	desc, ok := DescriptorFor(kind)
	if !ok {
		return nil, &DecodeError{Kind: kind, Detail: "unknown resource type"}
	}

	tree, err := decodeTree(kind, state)
	if err != nil {
		return nil, err
	}

	resource, err := desc.FromState(tree)
	if err != nil {
		return nil, &DecodeError{Kind: kind, Detail: "constructing resource", Err: err}
	}

	return resource, nil
}

func decodeTree(kind Kind, state map[string]interface{}) (map[string]interface{}, error) {
	tree := make(map[string]interface{}, len(state))

	for key, value := range state {
		plainKey, marker := splitMarker(key)

		decoded, err := decodeValue(kind, plainKey, marker, value)
		if err != nil {
			return nil, err
		}

		tree[plainKey] = decoded
	}

	return tree, nil
}

func splitMarker(key string) (string, string) {
	idx := strings.LastIndex(key, markerSeparator)
	if idx < 0 {
		return key, ""
	}

	return key[:idx], key[idx+len(markerSeparator):]
}

//nolint:cyclop // inverse of the encode dispatch
func decodeValue(kind Kind, key, marker string, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}

	if list, ok := value.([]interface{}); ok {
		elements := make([]interface{}, 0, len(list))

		for _, element := range list {
			decoded, err := decodeValue(kind, key, marker, element)
			if err != nil {
				return nil, err
			}

			elements = append(elements, decoded)
		}

		return elements, nil
	}

	switch marker {
	case "":
		if nested, ok := value.(map[string]interface{}); ok {
			return decodeTree(kind, nested)
		}

		return value, nil
	case datetimeMarker:
		text, ok := value.(string)
		if !ok {
			return nil, &DecodeError{Kind: kind, Detail: fmt.Sprintf("field %q tagged as datetime holds %T", key, value)}
		}

		parsed, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return nil, &DecodeError{Kind: kind, Detail: fmt.Sprintf("parsing datetime field %q", key), Err: err}
		}

		return parsed, nil
	default:
		nested, ok := value.(map[string]interface{})
		if !ok {
			return nil, &DecodeError{Kind: kind, Detail: fmt.Sprintf("field %q tagged as %s holds %T", key, marker, value)}
		}

		if _, registered := DescriptorFor(Kind(marker)); !registered {
			return nil, &DecodeError{Kind: kind, Detail: fmt.Sprintf("field %q references unknown resource type %q", key, marker)}
		}

		return DecodeState(Kind(marker), nested)
	}
}
