package items

// Optional scalars flatten to their value or to an untyped nil, so a
// flattened mapping never holds typed nil pointers.

func optString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func optInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func optFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

func optList(l []any) any {
	if l == nil {
		return nil
	}
	return l
}
