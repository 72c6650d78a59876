package backend

import "github.com/supakorn-kn/peponi-admin/errors"

func errInvalidBody(reason string) error {
	return errors.BackendResponseInvalidError.New("list endpoint", reason)
}
