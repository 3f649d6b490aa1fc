package audioio

import "github.com/sirupsen/logrus"

// Logger receives decode and encode diagnostics. The command line tools
// point it at their own configured logger.
var Logger logrus.FieldLogger = logrus.StandardLogger()
