package upstream

// ListFetch retrieves one logical list resource from the legacy API.
type ListFetch func() (interface{}, error)

// ResolveList attempts the primary fetch and degrades to the fallback when
// the primary yields nothing. The degradation rule is asymmetric on purpose:
// a 404 means the preferred route is not deployed on this backend, so it is
// treated exactly like an empty result. Any other error (auth, validation,
// server failure) propagates to the caller untouched.
//
// When a fallback exists its result is returned even if also empty; a 404
// from the fallback itself counts as empty.
func ResolveList(primary, fallback ListFetch) ([]Record, error) {
	body, err := primary()
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		body = nil
	}

	records := UnwrapList(body)
	if len(records) > 0 || fallback == nil {
		return records, nil
	}

	body, err = fallback()
	if err != nil {
		if IsNotFound(err) {
			return []Record{}, nil
		}
		return nil, err
	}
	return UnwrapList(body), nil
}
