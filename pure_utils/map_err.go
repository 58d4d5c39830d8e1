package pure_utils

func MapErr[T, U any](src []T, f func(T) (U, error)) ([]U, error) {
	us := make([]U, len(src))
	for i := range src {
		u, err := f(src[i])
		if err != nil {
			return nil, err
		}
		us[i] = u
	}
	return us, nil
}
