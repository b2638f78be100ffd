package v1alpha1_test

import (
	"strings"
	"testing"

	v1alpha1 "github.com/devantler-tech/kforge/pkg/apis/bundle/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBundle() *v1alpha1.Bundle {
	bundle := v1alpha1.NewBundle()
	bundle.ApplyDefaults()

	return bundle
}

func TestValidateServiceName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		serviceName string
		expectedErr error
	}{
		{name: "empty allowed", serviceName: ""},
		{name: "simple", serviceName: "jenkins"},
		{name: "with hyphen", serviceName: "jenkins-ci"},
		{name: "single letter", serviceName: "j"},
		{name: "leading digit", serviceName: "3scale"},
		{name: "single digit", serviceName: "0"},
		{name: "uppercase rejected", serviceName: "Jenkins", expectedErr: v1alpha1.ErrServiceNameInvalid},
		{name: "trailing hyphen rejected", serviceName: "jenkins-", expectedErr: v1alpha1.ErrServiceNameInvalid},
		{name: "leading hyphen rejected", serviceName: "-jenkins", expectedErr: v1alpha1.ErrServiceNameInvalid},
		{
			name:        "too long rejected",
			serviceName: "a" + strings.Repeat("b", 70),
			expectedErr: v1alpha1.ErrServiceNameTooLong,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := v1alpha1.ValidateServiceName(testCase.serviceName)

			if testCase.expectedErr != nil {
				require.ErrorIs(t, err, testCase.expectedErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	t.Parallel()

	require.NoError(t, validBundle().Validate())
}

func TestValidateRejectsMultipleReplicas(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Spec.Service.Replicas = 3

	require.ErrorIs(t, bundle.Validate(), v1alpha1.ErrInvalidReplicas)
}

func TestValidateRejectsBadCapacity(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Spec.Storage.Capacity = "ten-gigs"

	require.ErrorIs(t, bundle.Validate(), v1alpha1.ErrInvalidCapacity)
}

func TestValidateRejectsRelativeHostPath(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Spec.Storage.HostPath = "data/jenkins"

	require.ErrorIs(t, bundle.Validate(), v1alpha1.ErrHostPathNotAbsolute)
}

func TestValidateRejectsPortConflict(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Spec.Expose.AgentPort = bundle.Spec.Expose.HTTPPort

	require.ErrorIs(t, bundle.Validate(), v1alpha1.ErrPortsConflict)
}

func TestValidateRejectsPortOutOfRange(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Spec.Expose.HTTPPort = 70000

	require.ErrorIs(t, bundle.Validate(), v1alpha1.ErrInvalidPort)
}

func TestValidateRejectsBadSecretKey(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Spec.Credentials.UsernameKey = "user name"

	require.ErrorIs(t, bundle.Validate(), v1alpha1.ErrInvalidSecretKey)
}

func TestValidateRejectsMissingImageRepository(t *testing.T) {
	t.Parallel()

	bundle := validBundle()
	bundle.Spec.Image.Repository = "  "

	require.ErrorIs(t, bundle.Validate(), v1alpha1.ErrMissingImageRepository)
}

func TestValidateCapacity(t *testing.T) {
	t.Parallel()

	assert.NoError(t, v1alpha1.ValidateCapacity("10Gi"))
	assert.NoError(t, v1alpha1.ValidateCapacity("500Mi"))
	assert.Error(t, v1alpha1.ValidateCapacity("lots"))
}
