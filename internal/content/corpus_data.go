package content

import "math/rand"

// securityTopics is the built-in corpus about information security,
// digital forensics and cybersecurity (pt-BR content).
var securityTopics = map[string][]string{
	"seguranca_da_informacao": {
		"🔐 A segurança da informação é fundamental no mundo digital atual. Proteger dados confidenciais não é apenas uma responsabilidade técnica, mas um compromisso com a confiança dos clientes. #SegurançaDaInformação #DataProtection",
		"🛡️ Implementar políticas de segurança robustas é como construir uma fortaleza digital. Cada camada de proteção adiciona valor à defesa contra ameaças cibernéticas. #CyberSecurity #InfoSec",
		"📊 A gestão de riscos em segurança da informação requer análise contínua e adaptação às novas ameaças. Estar preparado é a melhor defesa. #RiskManagement #Security",
		"🔒 A classificação adequada de dados é o primeiro passo para uma estratégia de segurança eficaz. Nem toda informação precisa do mesmo nível de proteção. #DataClassification #InformationSecurity",
		"🌐 Com o aumento do trabalho remoto, a segurança de endpoints tornou-se ainda mais crítica. Proteger cada dispositivo é proteger toda a rede. #EndpointSecurity #RemoteWork",
	},
	"forense_computacional": {
		"🔍 A forense computacional é a arte de encontrar evidências digitais onde outros veem apenas bits e bytes. Cada arquivo deletado conta uma história. #ForenseComputacional #DigitalForensics",
		"💻 Na investigação forense digital, a preservação da cadeia de custódia é fundamental. Um erro pode invalidar toda a evidência coletada. #DigitalInvestigation #Forensics",
		"🕵️ A análise de malware revela as técnicas e motivações dos atacantes. Compreender o inimigo é essencial para fortalecer nossas defesas. #MalwareAnalysis #ThreatIntelligence",
		"📱 Com dispositivos móveis armazenando cada vez mais dados pessoais, a forense mobile tornou-se uma especialidade crucial. #MobileForensics #CyberInvestigation",
		"⚖️ A forense computacional não é apenas técnica, mas também jurídica. Entender as leis é tão importante quanto dominar as ferramentas. #LegalTech #DigitalEvidence",
	},
	"forense_digital": {
		"🔬 A forense digital moderna combina técnicas tradicionais com inteligência artificial para análise mais eficiente de grandes volumes de dados. #DigitalForensics #AI",
		"💾 A recuperação de dados apagados é uma das habilidades mais valiosas em forense digital. O que parece perdido pode ser crucial para o caso. #DataRecovery #Forensics",
		"🌊 A forense em nuvem apresenta desafios únicos: jurisdição, acesso aos dados e preservação de evidências em ambientes distribuídos. #CloudForensics #CyberSecurity",
		"🔐 A criptografia pode proteger dados, mas também pode esconder evidências. A forense precisa equilibrar privacidade e justiça. #Encryption #DigitalRights",
		"📸 A análise de metadados pode revelar informações surpreendentes sobre arquivos digitais, desde localização até equipamento usado. #Metadata #OSINT",
	},
	"ciberseguranca": {
		"🚨 Os ataques cibernéticos evoluem constantemente. Nossa defesa deve ser igualmente dinâmica e adaptável. #CyberSecurity #ThreatDetection",
		"🔧 Implementar Zero Trust não é apenas instalar ferramentas, é mudar a mentalidade: 'nunca confie, sempre verifique'. #ZeroTrust #Security",
		"🌐 A segurança em DevOps (DevSecOps) integra proteção desde o desenvolvimento. Segurança não pode ser uma reflexão tardia. #DevSecOps #SecureCode",
		"📈 O SOC (Security Operations Center) é o coração da defesa cibernética moderna. Monitoramento 24/7 faz toda a diferença. #SOC #CyberDefense",
		"🎯 Threat hunting é a busca proativa por ameaças na rede. Não podemos apenas reagir, precisamos antecipar. #ThreatHunting #ProactiveSecurity",
	},
	"golpes_digitais": {
		"⚠️ O phishing evoluiu: não são apenas emails suspeitos, mas mensagens sofisticadas que imitam perfeitamente empresas legítimas. #Phishing #SocialEngineering",
		"📱 Golpes via WhatsApp e SMS aumentaram 300% no último ano. A educação do usuário é nossa melhor defesa. #SMSFraud #DigitalScams",
		"💳 O skimming digital permite roubo de dados de cartão sem contato físico. A tecnologia que facilita também pode expor. #DigitalSkimming #FinancialSecurity",
		"🎭 Deepfakes estão sendo usados em golpes de romance e fraudes empresariais. A realidade digital precisa ser questionada. #Deepfakes #SocialEngineering",
		"🏦 Ataques a APIs bancárias cresceram exponencialmente. A segurança precisa acompanhar a inovação financeira. #APISecurity #FinTech",
	},
	"dicas_de_seguranca": {
		"💡 Dica de Segurança: Use autenticação multifator sempre que possível. É um pequeno inconveniente que pode evitar grandes problemas.",
		"🔐 Lembre-se: uma senha forte tem pelo menos 12 caracteres, mistura letras, números e símbolos, e é única para cada conta.",
		"📲 Mantenha seus aplicativos sempre atualizados. Patches de segurança são sua primeira linha de defesa contra vulnerabilidades conhecidas.",
		"🔍 Antes de clicar em links, verifique o remetente e a URL. Quando em dúvida, acesse o site diretamente pelo navegador.",
		"💾 Backup regular dos dados importantes. O ransomware pode criptografar seus arquivos, mas não pode apagar seus backups seguros.",
	},
	"insights_do_mercado": {
		"📊 O mercado de cibersegurança deve atingir $267 bilhões até 2026. A demanda por profissionais qualificados nunca foi tão alta.",
		"🎓 Certificações como CISSP, CEH e CISA continuam sendo diferenciais importantes na carreira de segurança.",
		"🌍 Regulamentações como LGPD no Brasil e GDPR na Europa mudaram como empresas lidam com dados pessoais.",
		"🤖 IA está revolucionando tanto ataques quanto defesas cibernéticas. É uma corrida armamentista digital.",
		"☁️ Migração para nuvem trouxe novos desafios de segurança. Responsabilidade compartilhada requer compreensão clara.",
	},
}

// DefaultCorpus builds the built-in security corpus with the given random
// source.
func DefaultCorpus(rng *rand.Rand) *Corpus {
	return New(securityTopics, rng)
}
