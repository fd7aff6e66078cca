package slots

// Merge combines a partial slot-data update into an existing document and
// returns a new document. Neither input is mutated.
//
// Merge is structural, level by level: dates merge with dates, slot names
// with slot names, and slot fields overwrite individually while untouched
// fields carry over. When an existing subtree does not have the shape the
// incoming update expects (a non-map where a map is needed), the incoming
// value replaces the subtree outright.
func Merge(existing, incoming SlotDocument) SlotDocument {
	if len(existing) == 0 {
		return copyDocument(incoming)
	}
	if len(incoming) == 0 {
		return copyDocument(existing)
	}

	merged := copyDocument(existing)

	for date, incomingValue := range incoming {
		incomingSlots, ok := incomingValue.(map[string]interface{})
		if !ok {
			merged[date] = incomingValue
			continue
		}

		existingSlots, ok := merged[date].(map[string]interface{})
		if !ok {
			// New date, or existing date data with the wrong shape.
			merged[date] = copyTree(incomingSlots)
			continue
		}

		for slotName, incomingDetails := range incomingSlots {
			incomingFields, ok := incomingDetails.(map[string]interface{})
			if !ok {
				existingSlots[slotName] = incomingDetails
				continue
			}

			existingFields, ok := existingSlots[slotName].(map[string]interface{})
			if !ok {
				existingSlots[slotName] = copyTree(incomingFields)
				continue
			}

			for field, value := range incomingFields {
				existingFields[field] = copyValue(value)
			}
		}
	}

	return merged
}

func copyDocument(doc SlotDocument) SlotDocument {
	out := make(SlotDocument, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyTree(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return copyTree(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	}
	return v
}
