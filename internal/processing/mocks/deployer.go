package mocks

// MockDeployer is a test double for deployment.SSHDeployer
type MockDeployer struct {
	DeployError error

	// Call tracking
	DeployCalled    bool
	DeployedPath    string
	DeployedAs      string
	DeployCallCount int
}

func (m *MockDeployer) DeployFile(localPath, filename string) error {
	m.DeployCalled = true
	m.DeployCallCount++
	m.DeployedPath = localPath
	m.DeployedAs = filename
	return m.DeployError
}
