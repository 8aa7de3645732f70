package utils

import (
	"context"

	"bsn-backend/pkg/apperrors"
	"bsn-backend/pkg/contextkeys"
	"bsn-backend/pkg/types"
)

func GetIdentityFromCtx(ctx context.Context) (types.Identity, error) {
	identity, ok := ctx.Value(contextkeys.IdentityKey).(types.Identity)
	if !ok {
		return types.Identity{}, apperrors.ErrIdentityMissing
	}
	return identity, nil
}
