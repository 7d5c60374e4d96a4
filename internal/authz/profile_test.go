package authz

import (
	"testing"

	"concentrator-system/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	profile, err := ParseProfile("north_field")
	require.NoError(t, err)
	assert.Equal(t, ProfileNorthField, profile)

	_, err = ParseProfile("superuser")
	assert.Error(t, err)

	_, err = ParseProfile("")
	assert.Error(t, err)
}

func TestProfileRegion(t *testing.T) {
	assert.Equal(t, entities.LocationNorth, ProfileNorthOrder.Region())
	assert.Equal(t, entities.LocationNorth, ProfileNorthField.Region())
	assert.Equal(t, entities.LocationCenter, ProfileCenterOrder.Region())
	assert.Equal(t, entities.LocationSouth, ProfileSouthField.Region())

	assert.Equal(t, entities.LocationNone, ProfileWarehouse.Region())
	assert.Equal(t, entities.LocationNone, ProfileLab.Region())
	assert.Equal(t, entities.LocationNone, ProfileAdmin.Region())
}

func TestActorPermissions(t *testing.T) {
	cases := []struct {
		profile    Profile
		canReceive bool
		canOrder   bool
		canInstall bool
		canTest    bool
	}{
		{ProfileWarehouse, true, false, false, false},
		{ProfileNorthOrder, false, true, false, false},
		{ProfileCenterOrder, false, true, false, false},
		{ProfileSouthOrder, false, true, false, false},
		{ProfileNorthField, false, false, true, false},
		{ProfileCenterField, false, false, true, false},
		{ProfileSouthField, false, false, true, false},
		{ProfileLab, false, false, false, true},
		{ProfileAdmin, true, true, true, true},
	}

	for _, tc := range cases {
		actor := Actor{UserID: 1, Login: string(tc.profile), Profile: tc.profile}
		assert.Equal(t, tc.canReceive, actor.CanReceive(), "CanReceive: %s", tc.profile)
		assert.Equal(t, tc.canOrder, actor.CanOrder(), "CanOrder: %s", tc.profile)
		assert.Equal(t, tc.canInstall, actor.CanInstallRemove(), "CanInstallRemove: %s", tc.profile)
		assert.Equal(t, tc.canTest, actor.CanTest(), "CanTest: %s", tc.profile)
	}
}

func TestLocationIsRegion(t *testing.T) {
	assert.True(t, entities.LocationNorth.IsRegion())
	assert.True(t, entities.LocationCenter.IsRegion())
	assert.True(t, entities.LocationSouth.IsRegion())

	assert.False(t, entities.LocationWarehouse.IsRegion())
	assert.False(t, entities.LocationLab.IsRegion())
	assert.False(t, entities.LocationNone.IsRegion())
}
